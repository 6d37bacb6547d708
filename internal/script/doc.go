/*
Package script runs JavaScript against the path store and the resource
fetcher.

Scripts run on a goja_nodejs event loop. Fetch completions and fetcher
events are queued onto the same loop, so callbacks registered with
Resource.on never run concurrently with script code.

# Globals

	Env.dataPath() Env.cachePath() Env.configPath()
	Env.copy(src, dst[, recursive=true])   -> bool
	Env.remove(path)                       -> bool
	Env.read(path)                         -> string
	Env.write(data, path[, overwrite=false]) -> bool
	Env.list(dir[, recursive=false])       -> []string
	Env.ensure(path) Env.exists(path) Env.isFile(path) Env.isDir(path) -> bool

	Resource.load(name)
	Resource.unload(name) Resource.available(name) Resource.exists(path) -> bool
	Resource.on("loaded" | "unloaded" | "error", fn(name))
	Resource.on("networkError", fn(code, message))

	console.log / console.warn / console.error

# Usage

	rt := script.NewRuntime(store, fetcher, logger)
	if err := rt.RunFile(ctx, "setup.js"); err != nil {
		return err
	}
*/
package script
