// Package dinedash embeds the restaurant dashboard core in another Go
// program: a load-once record store, the filter/sort engine, aggregate
// views and per-user sessions with a dialog stack and debounced search.
//
//	client, _ := dinedash.New(ctx, dinedash.WithFile("data/restaurants.json"))
//	defer client.Close()
//
//	q, _ := dinedash.DefaultQuery().With(dinedash.FieldAwards, "michelin")
//	res, _ := client.Restaurants(ctx, q)
//	for _, r := range res.View.Items() {
//	    fmt.Println(r.Name(), r.Rating())
//	}
//
//	sess := client.NewSession()
//	_ = sess.OpenDialog(dinedash.DialogDetail, "Frasca Food and Wine")
//	sess.Dismiss()
package dinedash
