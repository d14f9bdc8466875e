package models

// Credentials maps providers to the secret configured for them.
// Values must never be logged or echoed back unmasked.
type Credentials map[ProviderName]string

// Get returns the credential for p or "".
func (c Credentials) Get(p ProviderName) string {
	if c == nil {
		return ""
	}
	return c[p]
}

// Has reports whether a non-empty credential exists for p.
func (c Credentials) Has(p ProviderName) bool {
	return c.Get(p) != ""
}

// Overlay returns a copy of c where every non-empty entry of top replaces c's.
func (c Credentials) Overlay(top Credentials) Credentials {
	out := make(Credentials, len(c)+len(top))
	for k, v := range c {
		if v != "" {
			out[k] = v
		}
	}
	for k, v := range top {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Mask renders credentials as "abcd****" for status output.
func (c Credentials) Mask() KeyMap {
	out := make(KeyMap, len(c))
	for k, v := range c {
		if v == "" {
			continue
		}
		if len(v) <= 4 {
			out[k] = "****"
			continue
		}
		out[k] = v[:4] + "****"
	}
	return out
}
