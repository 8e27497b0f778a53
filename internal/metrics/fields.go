package metrics

// Attribute keys shared by every instrument.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrOp       = "op"
	AttrResult   = "result"
	AttrModeKind = "mode_kind"
)
