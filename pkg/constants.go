package constants

var Version = "0.0.0"

const (
	AppName = "vibe-palette"

	// KeyringService namespaces every credential this tool stores.
	KeyringService = "vibe-palette"
	// APIKeyName is the keyring entry holding the color service credential.
	APIKeyName = "openai_api_key"
)
