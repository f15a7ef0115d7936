// Package errors provides structured, coded errors for hyperdom.
//
// Each error carries a code from the registry (e.g. "E010"), a category, a
// short message, an optional longer detail and a hint. Script errors also
// carry the source location reported by the JavaScript engine.
//
// # Categories
//
//   - builder: misuse of the element builder (content before an element)
//   - script: compiling or running a JavaScript build script
//   - config: reading or validating hyperdom.json / hyperdom.yaml
//   - publish: uploading snapshots to object storage
//   - server: the live preview server
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("E011").
//	    WithLocation("page.js", 12, 5).
//	    Wrap(cause)
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E011: Script threw an exception
//	//
//	//   page.js:12:5
//	//   ...
package errors
