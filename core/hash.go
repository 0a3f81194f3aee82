package core

// channelHashSeed is the djb2 initial accumulator value.
const channelHashSeed uint32 = 5381

// ChannelHash computes the 32-bit djb2 hash of a channel name: the
// accumulator starts at 5381 and each Unicode code point c applies
// acc = acc*33 + c with unsigned 32-bit wraparound. The firmware hashes
// channel names the same way, which is what makes slot selection
// predictable across implementations. The empty string hashes to the
// seed itself.
func ChannelHash(name string) uint32 {
	h := channelHashSeed
	for _, r := range name {
		h = h*33 + uint32(r)
	}
	return h
}
