package graphics

import (
	"fmt"
	"strings"
)

// Kind selects a context variant.
type Kind int

const (
	// Auto resolves at build time to the single variant native to the target.
	Auto Kind = iota
	// Windowed is backed by GLFW (desktop only).
	Windowed
	// Mobile is backed by the mobile OS context object (iOS EAGLContext).
	Mobile
	// Embedded is backed by EGL with an off-screen pbuffer surface.
	Embedded
)

var kindNames = [...]string{
	Auto:     "auto",
	Windowed: "windowed",
	Mobile:   "mobile",
	Embedded: "embedded",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts the names printed by Kind.String, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	switch s {
	case "glfw":
		return Windowed, nil
	case "egl", "headless":
		return Embedded, nil
	case "ios", "eagl":
		return Mobile, nil
	}
	return Auto, fmt.Errorf("%w: unknown context kind %q", ErrInvalidArgument, s)
}

// UnmarshalText lets a Kind be read from flags and YAML.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Version is the requested OpenGL ES API version.
type Version int

const (
	ES2 Version = iota
	ES3
)

// Major returns the client API major version.
func (v Version) Major() int {
	if v == ES3 {
		return 3
	}
	return 2
}

// Valid reports whether v is one of the supported versions.
func (v Version) Valid() bool {
	return v == ES2 || v == ES3
}

func (v Version) String() string {
	switch v {
	case ES2:
		return "es2"
	case ES3:
		return "es3"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// ParseVersion accepts "es2", "es3", "2" or "3".
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "es2", "2", "gles2", "es20":
		return ES2, nil
	case "es3", "3", "gles3", "es30":
		return ES3, nil
	}
	return ES2, fmt.Errorf("%w: unknown GL version %q", ErrInvalidArgument, s)
}

func (v *Version) UnmarshalText(text []byte) error {
	p, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
