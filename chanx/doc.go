// Package chanx connects conduit endpoints to each other and to native Go
// channels.
//
// Everything here is written against [conduit.Source] and [conduit.Sink], so
// it works with any endpoint and with anything else exposing the same
// surface:
//
//   - [ToChan] and [FromChan]: bridge a source to a Go channel and a Go
//     channel to a sink.
//   - [Forward]: copy every value from a source to a sink.
//   - [Map] and [Filter]: transforming and filtering stages.
//   - [Merge]: fan-in from several sources into one sink.
//   - [Tee] and [Partition]: fan-out to every sink, or route by predicate.
//   - [SendBatch] and [RecvBatch]: move a slice of values at once.
//   - [Drain]: discard values until the source disconnects.
//
// A stage finishes cleanly when its source disconnects (every sender
// closed). Any other error, including the context error, is returned.
// Stages never close the endpoints they are given; the caller owns them.
package chanx
