package assets

// ManagerBuilderOption is a functional option for configuring a Manager.
// Use the With* functions to create options.
type ManagerBuilderOption func(m *manager)

// WithManifestFile sets the manifest filename resolved under the asset root.
// Defaults to "AssetLists.txt".
//
// Parameters:
//   - name: the manifest filename
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithManifestFile(name string) ManagerBuilderOption {
	return func(m *manager) {
		m.manifestFile = name
	}
}

// WithHotReload enables the filesystem watcher that re-emits changed Dynamic
// asset paths on the Events channel.
//
// Parameters:
//   - enabled: whether to watch the asset tree
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithHotReload(enabled bool) ManagerBuilderOption {
	return func(m *manager) {
		m.hotReload = enabled
	}
}
