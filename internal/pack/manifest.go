package pack

// FormatTag is the only container format accepted by the parser.
const FormatTag = "myself-v3"

// Container member names.
const (
	ManifestName = "version.json"
	PayloadName  = "data.enc"
	CardName     = "card.png"
)

// Manifest is the plaintext version.json member of a container.
type Manifest struct {
	Version    string `json:"version"`
	Format     string `json:"format"`
	ExportedAt int64  `json:"exportedAt"`
}
