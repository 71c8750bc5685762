package contract

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"donations/sdk"
)

// maxPayloadString caps strings read from instruction data; nothing larger fits in a transaction.
const maxPayloadString = 1232

// sighash is the 8 byte tag in front of records, instructions and events.
// Example payload: sighash("account", "Config")
func sighash(namespace, name string) [8]byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

var (
	configDiscriminator     = sighash("account", "Config")
	donorDiscriminator      = sighash("account", "Donor")
	donorIndexDiscriminator = sighash("account", "DonorIndex")
)

// ------------------------------------------------------------------
// Encoder helpers
// ------------------------------------------------------------------

// binWriter keeps the first encoder error so field lists read top to bottom.
type binWriter struct {
	enc *bin.Encoder
	err error
}

func newWriter(enc *bin.Encoder) *binWriter { return &binWriter{enc: enc} }

func (w *binWriter) writeBool(v bool) {
	if w.err == nil {
		w.err = w.enc.WriteBool(v)
	}
}

func (w *binWriter) writeUint32(v uint32) {
	if w.err == nil {
		w.err = w.enc.WriteUint32(v, bin.LE)
	}
}

func (w *binWriter) writeUint64(v uint64) {
	if w.err == nil {
		w.err = w.enc.WriteUint64(v, bin.LE)
	}
}

func (w *binWriter) writeInt64(v int64) {
	if w.err == nil {
		w.err = w.enc.WriteInt64(v, bin.LE)
	}
}

// writeAddress dumps the 32 raw key bytes, no length prefix.
func (w *binWriter) writeAddress(a sdk.Address) {
	if w.err == nil {
		w.err = w.enc.WriteBytes(a[:], false)
	}
}

// writeString is u32 length then the utf8 bytes.
func (w *binWriter) writeString(s string) {
	w.writeUint32(uint32(len(s)))
	if w.err == nil {
		w.err = w.enc.WriteBytes([]byte(s), false)
	}
}

// writeOptionalString writes a presence byte so decoders know if data follows.
func (w *binWriter) writeOptionalString(ptr *string) {
	w.writeBool(ptr != nil)
	if ptr != nil {
		w.writeString(*ptr)
	}
}

func (w *binWriter) writeTopEntry(e *TopEntry) {
	w.writeUint64(e.DonorID)
	w.writeAddress(e.DonorWallet)
	w.writeAddress(e.DonorPDA)
	w.writeUint64(e.LifetimeAmount)
}

// ------------------------------------------------------------------
// Decoder helpers
// ------------------------------------------------------------------

type binReader struct {
	dec *bin.Decoder
	err error
}

func newReader(dec *bin.Decoder) *binReader { return &binReader{dec: dec} }

func (r *binReader) readBool() bool {
	if r.err != nil {
		return false
	}
	v, err := r.dec.ReadBool()
	r.err = err
	return v
}

func (r *binReader) readUint32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint32(bin.LE)
	r.err = err
	return v
}

func (r *binReader) readUint64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(bin.LE)
	r.err = err
	return v
}

func (r *binReader) readInt64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadInt64(bin.LE)
	r.err = err
	return v
}

func (r *binReader) readAddress() sdk.Address {
	if r.err != nil {
		return sdk.Address{}
	}
	b, err := r.dec.ReadNBytes(addressSize)
	if err != nil {
		r.err = err
		return sdk.Address{}
	}
	return solana.PublicKeyFromBytes(b)
}

// readString refuses lengths above max before touching the payload.
func (r *binReader) readString(max int) string {
	n := r.readUint32()
	if r.err != nil {
		return ""
	}
	if int64(n) > int64(max) {
		r.err = fmt.Errorf("string of %d bytes exceeds %d", n, max)
		return ""
	}
	b, err := r.dec.ReadNBytes(int(n))
	if err != nil {
		r.err = err
		return ""
	}
	return string(b)
}

func (r *binReader) readOptionalString(max int) *string {
	if !r.readBool() || r.err != nil {
		return nil
	}
	s := r.readString(max)
	if r.err != nil {
		return nil
	}
	return &s
}

func (r *binReader) readTopEntry() TopEntry {
	return TopEntry{
		DonorID:        r.readUint64(),
		DonorWallet:    r.readAddress(),
		DonorPDA:       r.readAddress(),
		LifetimeAmount: r.readUint64(),
	}
}

// ------------------------------------------------------------------
// Records
// ------------------------------------------------------------------

func (c *Config) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeAddress(c.Admin)
	w.writeAddress(c.Treasury)
	w.writeBool(c.Paused)
	w.writeUint64(c.NextDonorID)
	w.writeUint64(c.TotalDonated)
	for i := range c.Top {
		w.writeTopEntry(&c.Top[i])
	}
	return w.err
}

func (c *Config) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	c.Admin = r.readAddress()
	c.Treasury = r.readAddress()
	c.Paused = r.readBool()
	c.NextDonorID = r.readUint64()
	c.TotalDonated = r.readUint64()
	for i := range c.Top {
		c.Top[i] = r.readTopEntry()
	}
	return r.err
}

func (d *Donor) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeAddress(d.DonorWallet)
	w.writeUint64(d.DonorID)
	w.writeUint64(d.LifetimeAmount)
	w.writeUint64(d.DonationsCount)
	w.writeString(d.Nickname)
	w.writeString(d.Description)
	w.writeInt64(d.LastDonationTs)
	return w.err
}

func (d *Donor) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	d.DonorWallet = r.readAddress()
	d.DonorID = r.readUint64()
	d.LifetimeAmount = r.readUint64()
	d.DonationsCount = r.readUint64()
	d.Nickname = r.readString(MaxNicknameLen)
	d.Description = r.readString(MaxDescriptionLen)
	d.LastDonationTs = r.readInt64()
	return r.err
}

func (x *DonorIndex) MarshalWithEncoder(enc *bin.Encoder) error {
	w := newWriter(enc)
	w.writeUint64(x.DonorID)
	w.writeAddress(x.DonorWallet)
	w.writeAddress(x.DonorPDA)
	return w.err
}

func (x *DonorIndex) UnmarshalWithDecoder(dec *bin.Decoder) error {
	r := newReader(dec)
	x.DonorID = r.readUint64()
	x.DonorWallet = r.readAddress()
	x.DonorPDA = r.readAddress()
	return r.err
}

// encodeTagged writes tag followed by the borsh body of v.
func encodeTagged(tag [8]byte, v bin.BinaryMarshaler) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(tag[:])
	if err := v.MarshalWithEncoder(bin.NewBorshEncoder(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeRecord lays out tag || borsh(v) zero padded to exactly size bytes.
func encodeRecord(tag [8]byte, size int, v bin.BinaryMarshaler) ([]byte, error) {
	body, err := encodeTagged(tag, v)
	if err != nil {
		return nil, err
	}
	if len(body) > size {
		return nil, fmt.Errorf("record needs %d bytes, slot holds %d", len(body), size)
	}
	out := make([]byte, size)
	copy(out, body)
	return out, nil
}

// decodeRecord treats an all zero buffer as the default record: the slot was
// allocated but nothing was ever written to it.
func decodeRecord(data []byte, tag [8]byte, v bin.BinaryUnmarshaler) error {
	if isZero(data) {
		return nil
	}
	if len(data) < discriminatorSize || !bytes.Equal(data[:discriminatorSize], tag[:]) {
		return ErrAccountDiscriminatorMismatch
	}
	if err := v.UnmarshalWithDecoder(bin.NewBorshDecoder(data[discriminatorSize:])); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountDidNotDeserialize, err)
	}
	return nil
}

// EncodeConfig packs a Config into its fixed size account data.
func EncodeConfig(c *Config) ([]byte, error) { return encodeRecord(configDiscriminator, ConfigSize, c) }

// DecodeConfig is the inverse of EncodeConfig.
func DecodeConfig(data []byte) (*Config, error) {
	c := &Config{}
	if err := decodeRecord(data, configDiscriminator, c); err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeDonor packs a Donor, reserving the full string capacity.
// Example payload: EncodeDonor(&Donor{DonorID: 1, Nickname: "alice"})
func EncodeDonor(d *Donor) ([]byte, error) { return encodeRecord(donorDiscriminator, DonorSize, d) }

func DecodeDonor(data []byte) (*Donor, error) {
	d := &Donor{}
	if err := decodeRecord(data, donorDiscriminator, d); err != nil {
		return nil, err
	}
	return d, nil
}

func EncodeDonorIndex(x *DonorIndex) ([]byte, error) {
	return encodeRecord(donorIndexDiscriminator, DonorIndexSize, x)
}

func DecodeDonorIndex(data []byte) (*DonorIndex, error) {
	x := &DonorIndex{}
	if err := decodeRecord(data, donorIndexDiscriminator, x); err != nil {
		return nil, err
	}
	return x, nil
}
