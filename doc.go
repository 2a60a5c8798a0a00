// Package dappier is a client for the Dappier API: real-time AI search and
// AI content recommendations.
//
// Client blocks on each call. AsyncClient returns a Call that can be awaited
// later, so many requests can be in flight at once:
//
//	client, err := dappier.New("") // reads DAPPIER_API_KEY
//	if err != nil {
//	    log.Fatal(err) // *dappier.ConfigurationError
//	}
//	defer client.Close()
//
//	resp := client.SearchRealTimeData(ctx, "latest AI news", dappier.RealTimeModelID)
//	if resp == nil {
//	    // the failure has already been logged
//	}
//
// The plain methods log failures and return nil. The E variants
// (SearchRealTimeDataE, GetAIRecommendationsE) return the error as a
// *TransportError, *ParseError or a sentinel such as ErrInvalidSearchAlgorithm.
package dappier
