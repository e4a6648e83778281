package router

import (
	"net/http"
	"strings"
)

type methodTyp uint16

const (
	mCONNECT methodTyp = 1 << iota
	mDELETE
	mGET
	mHEAD
	mOPTIONS
	mPATCH
	mPOST
	mPUT
	mTRACE
)

var mALL = mCONNECT | mDELETE | mGET | mHEAD |
	mOPTIONS | mPATCH | mPOST | mPUT | mTRACE

// MethodAny registers a route for every standard HTTP method.
const MethodAny = "*"

var methodMap = map[string]methodTyp{
	http.MethodConnect: mCONNECT,
	http.MethodDelete:  mDELETE,
	http.MethodGet:     mGET,
	http.MethodHead:    mHEAD,
	http.MethodOptions: mOPTIONS,
	http.MethodPatch:   mPATCH,
	http.MethodPost:    mPOST,
	http.MethodPut:     mPUT,
	http.MethodTrace:   mTRACE,
}

// methodOrder fixes the order in which allowed methods are reported.
var methodOrder = []methodTyp{mGET, mHEAD, mPOST, mPUT, mPATCH, mDELETE, mCONNECT, mOPTIONS, mTRACE}

// parseMethod resolves a registration method. Lowercase names are accepted.
func parseMethod(method string) (methodTyp, bool) {
	if method == MethodAny {
		return mALL, true
	}
	mt, ok := methodMap[strings.ToUpper(method)]
	return mt, ok
}

// lookupMethod resolves a request method. Request methods are case-sensitive
// per RFC 9110, so unknown spellings resolve to zero and never match.
func lookupMethod(method string) methodTyp {
	return methodMap[method]
}

func methodTypString(method methodTyp) string {
	for s, t := range methodMap {
		if method == t {
			return s
		}
	}
	return ""
}

// methodNames expands a bitmask into method names in methodOrder.
func methodNames(mask methodTyp) []string {
	if mask == 0 {
		return nil
	}
	names := make([]string, 0, 4)
	for _, mt := range methodOrder {
		if mask&mt != 0 {
			names = append(names, methodTypString(mt))
		}
	}
	return names
}
