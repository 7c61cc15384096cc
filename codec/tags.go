package codec

import "fmt"

// QPack tag bytes. The single-byte tag space is fully assigned:
//
//	0x00-0x3f  tiny positive int, value = tag
//	0x40-0x7b  tiny negative int, value = 63 - tag (-1..-60)
//	0x7c       hook (reserved)
//	0x7d-0x7f  double -1.0 / 0.0 / 1.0
//	0x80-0xe3  raw, inline length = tag - 0x80 (0..99)
//	0xe4-0xff  named tags below
const (
	TagHook       byte = 0x7c
	TagDoubleN1   byte = 0x7d
	TagDouble0    byte = 0x7e
	TagDouble1    byte = 0x7f
	TagRaw8       byte = 0xe4
	TagRaw16      byte = 0xe5
	TagRaw32      byte = 0xe6
	TagRaw64      byte = 0xe7
	TagInt8       byte = 0xe8
	TagInt16      byte = 0xe9
	TagInt32      byte = 0xea
	TagInt64      byte = 0xeb
	TagDouble     byte = 0xec
	TagArray0     byte = 0xed
	TagArray5     byte = 0xf2
	TagMap0       byte = 0xf3
	TagMap5       byte = 0xf8
	TagTrue       byte = 0xf9
	TagFalse      byte = 0xfa
	TagNull       byte = 0xfb
	TagArrayOpen  byte = 0xfc
	TagMapOpen    byte = 0xfd
	TagArrayClose byte = 0xfe
	TagMapClose   byte = 0xff
)

// Boundaries of the inline ranges.
const (
	tinyIntMax   = 0x3f              // 0..63 encode as the tag itself
	tinyNegLast  = 0x7b              // 0x40..0x7b encode -1..-60
	tinyNegMin   = -60               // smallest tiny negative int
	rawFirst     = 0x80              // raw with inline length
	rawLast      = 0xe3              //
	rawInlineMax = rawLast - rawFirst // 99

	smallContainerMax = 5 // ARRAYn / MAPn cover 0..5
)

// TagName returns a human-readable name for a tag byte, used in
// diagnostics and the inspection CLI.
func TagName(tag byte) string {
	switch {
	case tag <= tinyIntMax:
		return fmt.Sprintf("INT(%d)", tag)
	case tag <= tinyNegLast:
		return fmt.Sprintf("INT(%d)", 63-int(tag))
	case tag >= rawFirst && tag <= rawLast:
		return fmt.Sprintf("RAW(%d)", tag-rawFirst)
	case tag >= TagArray0 && tag <= TagArray5:
		return fmt.Sprintf("ARRAY%d", tag-TagArray0)
	case tag >= TagMap0 && tag <= TagMap5:
		return fmt.Sprintf("MAP%d", tag-TagMap0)
	}
	switch tag {
	case TagHook:
		return "HOOK"
	case TagDoubleN1:
		return "DOUBLE(-1)"
	case TagDouble0:
		return "DOUBLE(0)"
	case TagDouble1:
		return "DOUBLE(1)"
	case TagRaw8:
		return "RAW8"
	case TagRaw16:
		return "RAW16"
	case TagRaw32:
		return "RAW32"
	case TagRaw64:
		return "RAW64"
	case TagInt8:
		return "INT8"
	case TagInt16:
		return "INT16"
	case TagInt32:
		return "INT32"
	case TagInt64:
		return "INT64"
	case TagDouble:
		return "DOUBLE"
	case TagTrue:
		return "TRUE"
	case TagFalse:
		return "FALSE"
	case TagNull:
		return "NULL"
	case TagArrayOpen:
		return "ARRAY_OPEN"
	case TagMapOpen:
		return "MAP_OPEN"
	case TagArrayClose:
		return "ARRAY_CLOSE"
	case TagMapClose:
		return "MAP_CLOSE"
	}
	return fmt.Sprintf("0x%02x", tag)
}

// TagInfo describes one token of a stream for inspection tooling.
type TagInfo struct {
	Offset  int    // byte offset of the tag
	Tag     byte   // the tag byte itself
	Name    string // TagName(Tag)
	Summary string // payload rendering, empty for structural tags
}

// ScanTags walks a stream token by token without building values.
// It returns one TagInfo per token and fails on unknown tags or
// truncated payloads exactly like Decode.
func ScanTags(data []byte) ([]TagInfo, error) {
	d := &Decoder{cfg: DefaultConfig(), data: data}
	var infos []TagInfo
	for d.pos < len(d.data) {
		tok, err := d.next()
		if err != nil {
			return infos, err
		}
		info := TagInfo{Offset: tok.offset, Tag: tok.tag, Name: TagName(tok.tag)}
		switch tok.class {
		case tokInt:
			info.Summary = fmt.Sprintf("%d", tok.i)
		case tokDouble:
			info.Summary = fmt.Sprintf("%g", tok.f)
		case tokRaw:
			info.Summary = fmt.Sprintf("%d bytes", len(tok.raw))
		case tokArray, tokMap:
			info.Summary = fmt.Sprintf("%d inline", tok.cnt)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
