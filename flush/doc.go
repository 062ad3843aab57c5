// Package flush persists generated types and reads them back.
//
// A flushed assembly is a msgpack-encoded Manifest naming the proxy types and
// additional types generated by one pipeline, stamped with the participant
// configuration ID they were generated under. Recorder collects the names as
// the code generator runs; Assembly turns a Manifest back into types that
// typecache.Cache.LoadFlushedCode can register.
package flush
