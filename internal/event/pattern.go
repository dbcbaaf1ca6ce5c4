package event

import "strings"

// primitiveTypeNames maps JVM primitive signature codes to source names.
var primitiveTypeNames = map[string]string{
	"Z": "boolean",
	"B": "byte",
	"C": "char",
	"S": "short",
	"I": "int",
	"J": "long",
	"F": "float",
	"D": "double",
	"V": "void",
}

// SignatureTypeName converts an encoded type signature to the dotted
// source name debuggers send in patterns: "Ljava/lang/String;" becomes
// "java.lang.String", "[I" becomes "int[]". Unrecognized input is
// returned as is.
func SignatureTypeName(sig string) string {
	dims := 0
	for strings.HasPrefix(sig, "[") {
		sig = sig[1:]
		dims++
	}

	var name string
	switch {
	case strings.HasPrefix(sig, "L") && strings.HasSuffix(sig, ";"):
		name = strings.ReplaceAll(sig[1:len(sig)-1], "/", ".")
	default:
		if primitive, ok := primitiveTypeNames[sig]; ok {
			name = primitive
		} else {
			name = sig
		}
	}

	return name + strings.Repeat("[]", dims)
}

// MatchPattern reports whether the class named by the encoded signature
// matches a JDWP class pattern. A pattern is an exact dotted class name,
// or a name with a single '*' at the front ("ends with") or the back
// ("starts with"). A bare "*" matches everything. Comparison is
// byte-exact and case-sensitive.
func MatchPattern(signature, pattern string) bool {
	return matchTypeName(SignatureTypeName(signature), pattern)
}

// matchTypeName applies the pattern rules to an already-dotted name.
// A '*' anywhere but the first or last byte is literal.
func matchTypeName(name, pattern string) bool {
	if pattern == "*" {
		return true
	}
	switch {
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(name, pattern[1:])
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	default:
		return name == pattern
	}
}
