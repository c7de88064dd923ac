// Package catalogd provides an embedded Go client for the catalogd
// product catalog read layer backed by Redis with search modules.
//
// The client wires the catalog services directly over a database
// connection, without going through the HTTP API:
//
//	client, _ := catalogd.New(ctx, catalogd.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	page, _ := client.Catalog().Search(ctx, catalogd.Criteria{Query: "green tea"}, 0, 20)
//	ranked, _ := client.Recommendations().Rank(ctx, ids, catalogd.Profile{Age: 34}, "")
package catalogd
