// Package gotrans is a translation gateway core: a cache-aside lookup in
// front of an ordered chain of interchangeable translation engines.
//
// A lookup consults the cache first. On a miss the engines of the Catalog are
// tried in order until one returns text, and that text is written back to the
// cache. Engine failures move on to the next engine; cache failures degrade to
// uncached translation. Neither is returned to the caller.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gotrans"
//	    "github.com/ZaguanLabs/gotrans/cache"
//	    "github.com/ZaguanLabs/gotrans/engine"
//	)
//
//	func main() {
//	    ids, err := engine.Discover(ctx, "/usr/bin/trans")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    catalog, err := gotrans.NewCatalog(ids)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    t := gotrans.NewTranslator(catalog,
//	        engine.NewShellInvoker(engine.ShellConfig{Binary: "/usr/bin/trans"}),
//	        gotrans.WithCache(cache.NewInMemoryCache()),
//	    )
//
//	    tr, ok := t.Lookup(context.Background(), "es", "hello")
//	    if ok {
//	        fmt.Println(tr.Text) // hola
//	    }
//	}
package gotrans
