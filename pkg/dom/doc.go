// Package dom provides the small live document tree that hyperdom builds into.
//
// The tree mirrors the parts of the browser DOM a builder needs: element and
// text creation, child append/replace/remove, attributes, a class list, an
// inline style declaration with priorities, plain element properties and
// on* event handler properties. Every mutation is reported to the owning
// Document's observers, which is how the preview server learns that a
// reactive binding changed the tree.
//
// # Usage
//
//	doc := dom.NewDocument()
//	div := doc.CreateElement("div")
//	div.ClassList().Add("card")
//	div.Style().SetProperty("color", "red", "important")
//	div.AppendChild(doc.CreateTextNode("hello"))
//
//	html, _ := dom.OuterHTML(div)
//	// <div class="card" style="color: red !important;">hello</div>
//
// A Document and the nodes it creates are not safe for concurrent use.
package dom
