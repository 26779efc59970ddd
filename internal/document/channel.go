package document

import (
	"fmt"
	"strings"
)

// Channel identifies a texture-set material channel.
type Channel uint8

const (
	// ChannelBaseColor is the albedo channel.
	ChannelBaseColor Channel = iota
	// ChannelHeight is the height channel.
	ChannelHeight
	// ChannelMetal is the metallic channel.
	ChannelMetal
	// ChannelRoughness is the roughness channel.
	ChannelRoughness
	// ChannelNormal is the normal channel.
	ChannelNormal
	// ChannelOpacity is the opacity channel.
	ChannelOpacity
	// ChannelEmissive is the emissive channel.
	ChannelEmissive

	channelCount
)

var channelNames = [...]string{
	ChannelBaseColor: "BaseColor",
	ChannelHeight:    "Height",
	ChannelMetal:     "Metal",
	ChannelRoughness: "Roughness",
	ChannelNormal:    "Normal",
	ChannelOpacity:   "Opacity",
	ChannelEmissive:  "Emissive",
}

// String returns the channel name.
func (c Channel) String() string {
	if c < channelCount {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c < channelCount
}

// ParseChannel parses a channel name. Matching is case-insensitive and
// accepts "Metallic" as an alias for Metal.
func ParseChannel(name string) (Channel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "metallic":
		return ChannelMetal, nil
	case "basecolour", "albedo":
		return ChannelBaseColor, nil
	}
	for i, cn := range channelNames {
		if strings.ToLower(cn) == n {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedChannel, name)
}

// AllChannels returns every known channel in canonical order.
func AllChannels() []Channel {
	out := make([]Channel, 0, channelCount)
	for c := Channel(0); c < channelCount; c++ {
		out = append(out, c)
	}
	return out
}

// ChannelSet is a set of channels. The zero value is the empty set.
type ChannelSet uint16

// NewChannelSet builds a set from the given channels.
func NewChannelSet(channels ...Channel) ChannelSet {
	var s ChannelSet
	for _, c := range channels {
		s = s.With(c)
	}
	return s
}

// ParseChannelSet builds a set from channel names.
func ParseChannelSet(names []string) (ChannelSet, error) {
	var s ChannelSet
	for _, name := range names {
		c, err := ParseChannel(name)
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}

// Has reports whether c is in the set.
func (s ChannelSet) Has(c Channel) bool {
	return c.Valid() && s&(1<<c) != 0
}

// With returns a copy of the set with c added.
func (s ChannelSet) With(c Channel) ChannelSet {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

// Without returns a copy of the set with c removed.
func (s ChannelSet) Without(c Channel) ChannelSet {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << c)
}

// IsEmpty reports whether the set has no channels.
func (s ChannelSet) IsEmpty() bool {
	return s == 0
}

// Len returns the number of channels in the set.
func (s ChannelSet) Len() int {
	n := 0
	for c := Channel(0); c < channelCount; c++ {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// IsSubsetOf reports whether every channel of s is also in other.
func (s ChannelSet) IsSubsetOf(other ChannelSet) bool {
	return s&^other == 0
}

// Intersect returns the channels present in both sets.
func (s ChannelSet) Intersect(other ChannelSet) ChannelSet {
	return s & other
}

// Channels returns the members in canonical order.
func (s ChannelSet) Channels() []Channel {
	out := make([]Channel, 0, s.Len())
	for c := Channel(0); c < channelCount; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the member names in canonical order.
func (s ChannelSet) Names() []string {
	channels := s.Channels()
	out := make([]string, len(channels))
	for i, c := range channels {
		out[i] = c.String()
	}
	return out
}

// String returns a representation like "{BaseColor,Height}".
func (s ChannelSet) String() string {
	return "{" + strings.Join(s.Names(), ",") + "}"
}
