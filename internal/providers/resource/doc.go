/*
Package resource fetches named resource bundles over HTTP and mounts them in
a vfs.Namespace.

A bundle called "pack1" is downloaded from {baseURL}/pack1.rcc, stored as
{dataDir}/pack1.rcc and mounted at "/pack1/". Every Load returns a Request
that completes once the outcome is known; subscribers additionally receive
Loaded, Unloaded, Error and NetworkError events.

# Usage

	f, err := resource.New(resource.Config{
		BaseURL: "http://1499.dk/bw",
		DataDir: store.DataPath(),
	}, ns, resource.WithLogger(logger))
	if err != nil {
		return err
	}

	unsubscribe := f.Subscribe(func(ev resource.Event) {
		log.Println(ev.Kind, ev.Name)
	})
	defer unsubscribe()

	res, err := f.Load(ctx, "pack1").Wait(ctx)

# Dispatching

Completions run through the dispatcher set with WithDispatcher. Script
hosts pass a function that queues onto their event loop so handlers never
race with script code.
*/
package resource
