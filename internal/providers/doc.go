// Package providers fetches dashboard and content data from public APIs.
//
// Every provider implements driven.Fetcher for its payload type and shares
// the Client helper, which throttles requests with a token bucket and maps
// HTTP failures onto typed errors. Client errors (4xx other than 429) and
// undecodable bodies wrap domain.ErrBadResponse, so the retry wrapper gives
// up on them immediately. A provider without credentials reports
// domain.ErrProviderDisabled.
//
// Providers:
//   - Weather: OpenWeather current conditions
//   - GitHub: contribution counts and the year-end summary (GraphQL)
//   - Market: CoinGecko BTC spot price
//   - VPS: 64clouds bandwidth usage
//   - Quote: Quotable random quote
//   - Poetry: jinrishici classical poetry
//   - HackerNews: best stories
//   - Feed: stories from any RSS or Atom feed
package providers
