package scene

// File is the on-disk YAML layout of a scene.
type File struct {
	Bodies     []BodySpec      `yaml:"bodies"`
	Nodes      []NodeSpec      `yaml:"nodes"`
	Animations []AnimationSpec `yaml:"animations"`
}

// BodySpec is a collision box, optionally attached to a node.
type BodySpec struct {
	Name string     `yaml:"name"`
	Min  [3]float32 `yaml:"min"`
	Max  [3]float32 `yaml:"max"`
	Node string     `yaml:"node,omitempty"`
}

// RotationSpec is either an axis and angle in degrees or a quaternion
// given as [w, x, y, z].
type RotationSpec struct {
	Axis  *[3]float32 `yaml:"axis,omitempty"`
	Angle float32     `yaml:"angle,omitempty"`
	Quat  *[4]float32 `yaml:"quat,omitempty"`
}

// NodeSpec is one transform node.
type NodeSpec struct {
	Name     string        `yaml:"name"`
	Parent   string        `yaml:"parent,omitempty"`
	Position [3]float32    `yaml:"position"`
	Rotation *RotationSpec `yaml:"rotation,omitempty"`
	Scale    *[3]float32   `yaml:"scale,omitempty"` // defaults to [1, 1, 1]
}

// VectorKeySpec is a position or scaling key.
type VectorKeySpec struct {
	Time  float64    `yaml:"time"`
	Value [3]float32 `yaml:"value"`
}

// RotationKeySpec is a rotation key.
type RotationKeySpec struct {
	Time         float64 `yaml:"time"`
	RotationSpec `yaml:",inline"`
}

// MeshKeySpec selects a mesh attachment.
type MeshKeySpec struct {
	Time  float64 `yaml:"time"`
	Value uint32  `yaml:"value"`
}

// ChannelSpec animates one node.
type ChannelSpec struct {
	Node         string            `yaml:"node"`
	PreState     string            `yaml:"pre_state,omitempty"`
	PostState    string            `yaml:"post_state,omitempty"`
	PositionKeys []VectorKeySpec   `yaml:"position_keys,omitempty"`
	RotationKeys []RotationKeySpec `yaml:"rotation_keys,omitempty"`
	ScalingKeys  []VectorKeySpec   `yaml:"scaling_keys,omitempty"`
}

// MeshChannelSpec animates one mesh attachment.
type MeshChannelSpec struct {
	Mesh string        `yaml:"mesh"`
	Keys []MeshKeySpec `yaml:"keys"`
}

// AnimationSpec is one named animation.
type AnimationSpec struct {
	Name           string            `yaml:"name"`
	Duration       float64           `yaml:"duration,omitempty"`
	TicksPerSecond float64           `yaml:"ticks_per_second,omitempty"`
	Channels       []ChannelSpec     `yaml:"channels"`
	MeshChannels   []MeshChannelSpec `yaml:"mesh_channels,omitempty"`
}
