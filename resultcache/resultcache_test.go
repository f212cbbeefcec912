package resultcache

import "testing"

func TestLoadBeforeStore(t *testing.T) {
	var c Cache
	if _, ok := c.Load(); ok {
		t.Error("Load before any Store should report no result")
	}
}

func TestStoreOverwritesWholesale(t *testing.T) {
	var c Cache
	c.Store(Result{Original: "hello", Translated: "bonjour", ImagePath: "a.png"})
	c.Store(Result{Original: "second", ImagePath: "b.png"})

	res, ok := c.Load()
	if !ok {
		t.Fatal("Load failed after Store")
	}
	if res.Original != "second" || res.ImagePath != "b.png" {
		t.Errorf("Unexpected result: %+v", res)
	}
	if res.Translated != "" {
		t.Error("Overwrite should clear fields the new result does not set")
	}
}
