package encoding2

const hexDigits = "0123456789abcdef"

// This hex encodes the binary data and writes the encoded data to the writer.
// Returns the first write error.
func HexEncodeToWriter(w BinaryWriter, data []byte) error {
	for _, b := range data {
		if err := w.WriteByte(hexDigits[b>>4]); err != nil {
			return err
		}
		if err := w.WriteByte(hexDigits[b&0x0f]); err != nil {
			return err
		}
	}
	return nil
}
