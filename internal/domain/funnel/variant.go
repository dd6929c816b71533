package funnel

// Variant identifica o braço do teste A/B da landing.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// VariantFor atribui um braço de forma determinística a partir da
// semente (mesma semente, mesma variante; split 50/50).
func VariantFor(seed string) Variant {
	var hash int32
	for _, c := range seed {
		hash = (hash << 5) - hash + c
	}
	if hash < 0 {
		hash = -hash
	}
	if hash%2 == 0 {
		return VariantA
	}
	return VariantB
}

// ParseVariant valida uma variante vinda de fora.
func ParseVariant(v string) (Variant, bool) {
	switch Variant(v) {
	case VariantA, VariantB:
		return Variant(v), true
	}
	return "", false
}
