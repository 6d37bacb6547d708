package script

import (
	"github.com/dop251/goja"
)

// bindEnv builds the Env global over the path store. Failures surface as
// false, "" or an empty list; the store logs them.
func (r *Runtime) bindEnv(vm *goja.Runtime) (*goja.Object, error) {
	env := vm.NewObject()
	s := r.store

	bindings := map[string]any{
		"dataPath":   s.DataPath,
		"cachePath":  s.CachePath,
		"configPath": s.ConfigPath,

		"copy": func(call goja.FunctionCall) goja.Value {
			recursive := optBool(call, 2, true)
			err := s.Copy(call.Argument(0).String(), call.Argument(1).String(), recursive)
			return vm.ToValue(err == nil)
		},
		"remove": func(p string) bool {
			return s.Remove(p) == nil
		},
		"read": func(p string) string {
			text, _ := s.Read(p)
			return text
		},
		"write": func(call goja.FunctionCall) goja.Value {
			overwrite := optBool(call, 2, false)
			err := s.Write(call.Argument(0).String(), call.Argument(1).String(), overwrite)
			return vm.ToValue(err == nil)
		},
		"list": func(call goja.FunctionCall) goja.Value {
			recursive := optBool(call, 1, false)
			entries, err := s.List(call.Argument(0).String(), recursive)
			if err != nil || entries == nil {
				entries = []string{}
			}
			return vm.ToValue(entries)
		},
		"find": func(dir, pattern string) []string {
			matches, err := s.Find(r.ctx, dir, pattern)
			if err != nil || matches == nil {
				return []string{}
			}
			return matches
		},
		"ensure": s.Ensured,
		"exists": s.Exists,
		"isFile": s.IsFile,
		"isDir":  s.IsDir,
	}

	for name, fn := range bindings {
		if err := env.Set(name, fn); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// optBool returns argument i as a bool, or def when it was not passed.
func optBool(call goja.FunctionCall, i int, def bool) bool {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return def
	}
	return v.ToBoolean()
}
