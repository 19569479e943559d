// Package logopulse provides the shared data model and error taxonomy
// for asynchronous image label detection.
//
// A client submits an image under a generated submission key, receives
// an opaque work identifier, and polls until the detection result is
// available or a bounded attempt budget runs out. The stateless relay
// in subpackage relay mediates between clients and the upstream
// processing boundary; subpackage client implements the submit/poll
// side; submitkey and urlstrategy hold the pure derivations both sides
// share.
//
// Sentinel Values
//
// Two reserved strings travel on the wire: a label Name of "None"
// means the engine detected nothing, and a work identifier of
// "unknown" marks a malformed upload response. Both must be checked
// explicitly; neither is ordinary data.
package logopulse
