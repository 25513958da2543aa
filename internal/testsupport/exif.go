package testsupport

import (
	"bytes"
	"encoding/binary"
)

// EXIF/TIFF field types
const (
	typeASCII    uint16 = 2
	typeLong     uint16 = 4
	typeRational uint16 = 5
)

// Exif describes the tags written by TIFF and JPEG. Empty fields are omitted.
type Exif struct {
	DateTime         string
	DateTimeOriginal string
	Make             string
	GPS              *GPS
}

// GPS holds the four position tags. Each coordinate is a degree/minute/second
// triple of numerator/denominator pairs.
type GPS struct {
	LatitudeRef  string
	Latitude     [3][2]uint32
	LongitudeRef string
	Longitude    [3][2]uint32
}

type entry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiEntry(tag uint16, s string) entry {
	b := append([]byte(s), 0)
	return entry{tag: tag, typ: typeASCII, count: uint32(len(b)), data: b}
}

func rationalEntry(tag uint16, vals [3][2]uint32) entry {
	b := make([]byte, 0, 24)
	for _, v := range vals {
		b = binary.BigEndian.AppendUint32(b, v[0])
		b = binary.BigEndian.AppendUint32(b, v[1])
	}
	return entry{tag: tag, typ: typeRational, count: 3, data: b}
}

func longEntry(tag uint16, v uint32) entry {
	return entry{tag: tag, typ: typeLong, count: 1, data: binary.BigEndian.AppendUint32(nil, v)}
}

func ifdSize(n int) uint32 {
	return uint32(2 + 12*n + 4)
}

// TIFF builds a big-endian TIFF blob carrying the requested EXIF tags
func TIFF(x Exif) []byte {
	var ifd0, exifIFD, gpsIFD []entry

	if x.Make != "" {
		ifd0 = append(ifd0, asciiEntry(0x010f, x.Make))
	}
	if x.DateTime != "" {
		ifd0 = append(ifd0, asciiEntry(0x0132, x.DateTime))
	}
	if x.DateTimeOriginal != "" {
		exifIFD = append(exifIFD, asciiEntry(0x9003, x.DateTimeOriginal))
	}
	if x.GPS != nil {
		gpsIFD = append(gpsIFD,
			asciiEntry(0x0001, x.GPS.LatitudeRef),
			rationalEntry(0x0002, x.GPS.Latitude),
			asciiEntry(0x0003, x.GPS.LongitudeRef),
			rationalEntry(0x0004, x.GPS.Longitude),
		)
	}

	// Pointer entries are patched once offsets are known; reserve them now so
	// IFD0 has its final size.
	exifPtr, gpsPtr := -1, -1
	if len(exifIFD) > 0 {
		exifPtr = len(ifd0)
		ifd0 = append(ifd0, longEntry(0x8769, 0))
	}
	if len(gpsIFD) > 0 {
		gpsPtr = len(ifd0)
		ifd0 = append(ifd0, longEntry(0x8825, 0))
	}

	off := uint32(8)
	ifd0Off := off
	off += ifdSize(len(ifd0))
	exifOff := off
	if len(exifIFD) > 0 {
		off += ifdSize(len(exifIFD))
	}
	gpsOff := off
	if len(gpsIFD) > 0 {
		off += ifdSize(len(gpsIFD))
	}
	dataOff := off

	if exifPtr >= 0 {
		ifd0[exifPtr] = longEntry(0x8769, exifOff)
	}
	if gpsPtr >= 0 {
		ifd0[gpsPtr] = longEntry(0x8825, gpsOff)
	}

	var head, data bytes.Buffer
	head.WriteString("MM")
	_ = binary.Write(&head, binary.BigEndian, uint16(42))
	_ = binary.Write(&head, binary.BigEndian, ifd0Off)

	writeIFD := func(entries []entry) {
		_ = binary.Write(&head, binary.BigEndian, uint16(len(entries)))
		for _, e := range entries {
			_ = binary.Write(&head, binary.BigEndian, e.tag)
			_ = binary.Write(&head, binary.BigEndian, e.typ)
			_ = binary.Write(&head, binary.BigEndian, e.count)
			if len(e.data) <= 4 {
				var inline [4]byte
				copy(inline[:], e.data)
				head.Write(inline[:])
				continue
			}
			_ = binary.Write(&head, binary.BigEndian, dataOff+uint32(data.Len()))
			data.Write(e.data)
			if data.Len()%2 == 1 {
				data.WriteByte(0)
			}
		}
		_ = binary.Write(&head, binary.BigEndian, uint32(0))
	}

	writeIFD(ifd0)
	if len(exifIFD) > 0 {
		writeIFD(exifIFD)
	}
	if len(gpsIFD) > 0 {
		writeIFD(gpsIFD)
	}

	return append(head.Bytes(), data.Bytes()...)
}

// WithExif inserts an APP1 EXIF segment right after the SOI marker of a JPEG
func WithExif(jpegData []byte, x Exif) []byte {
	payload := append([]byte("Exif\x00\x00"), TIFF(x)...)

	var out bytes.Buffer
	out.Write(jpegData[:2])
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(jpegData[2:])
	return out.Bytes()
}
