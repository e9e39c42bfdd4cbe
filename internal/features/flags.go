package features

import "FlowSpectra/internal/model"

// FlagCounts tallies TCP flag occurrences across a flow. A "pure" count is a
// segment carrying exactly that flag; an "embedded" count is a segment
// carrying the flag alongside others.
type FlagCounts struct {
	Total int
	Null  int

	PureFIN, EmbeddedFIN int
	PureSYN, EmbeddedSYN int
	PureRST, EmbeddedRST int
	PurePSH, EmbeddedPSH int
	PureACK, EmbeddedACK int
	PureURG, EmbeddedURG int
	PureECE, EmbeddedECE int
	PureCWR, EmbeddedCWR int

	RSTACK  int // exactly RST+ACK
	SYNACK  int // exactly SYN+ACK
	PushACK int // exactly PSH+ACK
	SynFin  int // exactly SYN+FIN
	// EmbeddedSynFin counts segments with both SYN and FIN set regardless of
	// other flags; SYN+FIN together is never legitimate.
	EmbeddedSynFin int
}

// CountFlags walks the packet list once and produces the full tally.
func CountFlags(packets []model.DirectedPacket) FlagCounts {
	var c FlagCounts
	for _, dp := range packets {
		f := dp.Packet.Flags
		n := f.Count()
		c.Total += n
		if n == 0 {
			c.Null++
			continue
		}

		pure := n == 1
		count(&c.PureFIN, &c.EmbeddedFIN, f.FIN, pure)
		count(&c.PureSYN, &c.EmbeddedSYN, f.SYN, pure)
		count(&c.PureRST, &c.EmbeddedRST, f.RST, pure)
		count(&c.PurePSH, &c.EmbeddedPSH, f.PSH, pure)
		count(&c.PureACK, &c.EmbeddedACK, f.ACK, pure)
		count(&c.PureURG, &c.EmbeddedURG, f.URG, pure)
		count(&c.PureECE, &c.EmbeddedECE, f.ECE, pure)
		count(&c.PureCWR, &c.EmbeddedCWR, f.CWR, pure)

		if n == 2 {
			switch {
			case f.RST && f.ACK:
				c.RSTACK++
			case f.SYN && f.ACK:
				c.SYNACK++
			case f.PSH && f.ACK:
				c.PushACK++
			case f.SYN && f.FIN:
				c.SynFin++
			}
		}
		if f.SYN && f.FIN {
			c.EmbeddedSynFin++
		}
	}
	return c
}

func count(pure, embedded *int, set, isPure bool) {
	if !set {
		return
	}
	if isPure {
		*pure++
	} else {
		*embedded++
	}
}
