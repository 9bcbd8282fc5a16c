package gateways

// AssetSigner produces detached signatures for release assets
type AssetSigner interface {
	// Sign returns an ASCII-armored detached signature of content
	Sign(content []byte) ([]byte, error)

	// SignatureName returns the asset name under which the signature of name is uploaded
	SignatureName(name string) string
}
