// Package tenderiq classifies, filters and groups public procurement tenders.
//
// The pure functions work on in-memory slices and need no database:
//
//	tenders, _ := tenderiq.LoadFixture("data/tenders.yaml")
//	q := tenderiq.Query{
//	    Category: tenderiq.Specific("Civil Works"),
//	    Value:    tenderiq.NewRange(tenderiq.Float(10), nil),
//	    Dates:    tenderiq.MustWithin(tenderiq.Last7Days),
//	}
//	for _, g := range tenderiq.GroupByCategory(tenderiq.Filter(tenders, q)) {
//	    fmt.Println(g.Category, len(g.Tenders))
//	}
//
// Client stores tenders in Redis or Valkey and evaluates the same queries
// over the stored set:
//
//	client, _ := tenderiq.New(tenderiq.WithValkey("localhost:6379", ""))
//	defer client.Close()
//	_ = client.ImportFile(ctx, "data/tenders.yaml")
//	res, _ := client.Tenders(ctx, tenderiq.Query{SearchTerm: "bridge"})
package tenderiq
