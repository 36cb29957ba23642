// Package geo resolves IBGE municipality codes to display names.
package geo

import "fmt"

// municipalities covers the codes seen in the simulated feed. The table is
// intentionally small; unknown codes fall back to a placeholder so ingestion
// never rejects a notification over an unmapped geography code.
var municipalities = map[string]string{
	"3550308": "São Paulo",
	"3304557": "Rio de Janeiro",
	"3106200": "Belo Horizonte",
	"2927408": "Salvador",
	"4106902": "Curitiba",
	"2304400": "Fortaleza",
	"5300108": "Brasília",
	"1302603": "Manaus",
	"2611606": "Recife",
	"4314902": "Porto Alegre",
}

// MunicipalityName resolves an IBGE code to a municipality name.
// Unknown codes resolve to "Municipality <code>" rather than failing.
func MunicipalityName(code string) string {
	if name, ok := municipalities[code]; ok {
		return name
	}
	return fmt.Sprintf("Municipality %s", code)
}

// KnownCodes returns every code in the resolution table.
func KnownCodes() []string {
	codes := make([]string, 0, len(municipalities))
	for code := range municipalities {
		codes = append(codes, code)
	}
	return codes
}
