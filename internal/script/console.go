package script

import (
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/logging"
	"go.uber.org/zap"
)

// zapPrinter routes console output to the logger.
type zapPrinter struct {
	logger *logging.Logger
	script string // written on the loop goroutine
}

func (p *zapPrinter) Log(msg string) {
	p.logger.Info(msg, zap.String("script", p.script))
}

func (p *zapPrinter) Warn(msg string) {
	p.logger.Warn(msg, zap.String("script", p.script))
}

func (p *zapPrinter) Error(msg string) {
	p.logger.Error(msg, zap.String("script", p.script))
}
