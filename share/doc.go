// Package share models a download from a public cloud share link.
//
// A share link points at either a single file or a folder. Both are
// fetched from the link's "/download" endpoint; the [Kind] of a [Request]
// decides how the response is treated:
//
//	r := share.Request{
//		URL:         "https://uni-bonn.sciebo.de/s/AbCdEf",
//		Destination: "data/raw/train.csv",
//		Kind:        share.File,
//	}
//	if err := r.Validate(); err != nil { ... }
package share
