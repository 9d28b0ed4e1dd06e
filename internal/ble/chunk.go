package ble

// maxWritePayload is the usable bytes per write command at the default
// ATT MTU (23 - 3 bytes of header). Robot commands are a handful of ASCII
// bytes, but a long command still goes out whole, in pieces.
const maxWritePayload = 20

// Write sends data to the command channel, chopped into MTU-safe pieces.
// Channels satisfies the dispatcher's Sender this way.
func (ch *Channels) Write(data []byte) error {
	for len(data) > 0 {
		n := maxWritePayload
		if len(data) < n {
			n = len(data)
		}
		if err := ch.Command.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
