package runtime

import (
	"sync/atomic"

	"github.com/mkalinski/go-avm2/pkg/qname"
)

// XMLHelper is the seam to the external XML subsystem. The core only needs
// value equality, concatenation for +, and descendants for the .. operator;
// the parser and tree live elsewhere.
type XMLHelper interface {
	WeakEquals(a, b Any) (bool, error)
	Concatenate(a, b Any) (Any, error)
	Descendants(recv Any, name qname.QName) (Any, error)
}

var xmlHelperRef atomic.Pointer[xmlHelperBox]

type xmlHelperBox struct {
	h XMLHelper
}

// RegisterXMLHelper publishes the XML subsystem's helper. Registration
// happens once at runtime startup, before XML values circulate.
func RegisterXMLHelper(h XMLHelper) {
	xmlHelperRef.Store(&xmlHelperBox{h: h})
}

func currentXMLHelper() XMLHelper {
	if b := xmlHelperRef.Load(); b != nil {
		return b.h
	}
	return nil
}
