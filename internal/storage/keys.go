package storage

const (
	// KeySettings is the hash holding one field per setting.
	KeySettings = "abstime:settings"
	// ChannelSettingsEvents carries JSON-encoded change patches.
	ChannelSettingsEvents = "abstime:settings:events"
)
