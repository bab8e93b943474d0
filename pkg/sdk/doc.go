// Package clusterkraf groups geographic points that are close together on
// screen into cluster points, for rendering markers on a map.
//
// The policy decides where a cluster point is drawn: at its first member
// (default) or at the midpoint of its members' bounds.
//
//	client, _ := clusterkraf.New(clusterkraf.WithCentroid(), clusterkraf.WithPixelDistance(40))
//	points := []*clusterkraf.InputPoint{
//	    clusterkraf.NewInputPoint("paphos", clusterkraf.NewLatLng(34.7533, 32.4069), nil),
//	    clusterkraf.NewInputPoint("kourion", clusterkraf.NewLatLng(34.6642, 32.8828), nil),
//	}
//	clusters, _ := client.Cluster(ctx, points, 9)
//	for _, c := range clusters {
//	    fmt.Println(c.GeoPosition(), c.Size(), c.Bounds())
//	}
//
// Transitions between two zoom levels pair animation origins with the
// cluster points they move into:
//
//	transitions, _ := client.Transitions(ctx, points, 6, 12)
package clusterkraf
