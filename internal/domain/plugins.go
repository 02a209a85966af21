package domain

// PluginVerify is the plugin that contributes contract verification
const PluginVerify = "truffle-plugin-verify"

// PluginInfo describes a plugin the tool knows how to honor.
type PluginInfo struct {
	Name        string
	Description string
	Commands    []string
}

// KnownPlugins lists plugins that map onto built-in commands.
var KnownPlugins = map[string]PluginInfo{
	PluginVerify: {
		Name:        PluginVerify,
		Description: "Verify deployed contracts on Etherscan-compatible explorers",
		Commands:    []string{"verify"},
	},
}

// LookupPlugin returns plugin info for a name.
func LookupPlugin(name string) (PluginInfo, bool) {
	p, ok := KnownPlugins[name]
	return p, ok
}
