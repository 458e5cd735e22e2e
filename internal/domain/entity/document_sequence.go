package entity

// Familias de numeración de documentos.
const (
	SequenceFamilyQuote = "QUOTE"
	SequenceFamilyOrder = "ORDER"
)

// DocumentSequence es el contador atómico de una familia de numeración.
// NextValue se muta exclusivamente con un incremento atómico del lado del
// servidor; nunca con leer-modificar-escribir desde el cliente.
type DocumentSequence struct {
	CompanyID string
	Family    string
	NextValue int64
}

// SequencePrefix devuelve el prefijo legible del consecutivo de una familia.
func SequencePrefix(family string) string {
	switch family {
	case SequenceFamilyQuote:
		return "COT"
	case SequenceFamilyOrder:
		return "PED"
	default:
		return "DOC"
	}
}
