package shardtail

import (
	"bytes"

	si "github.com/Fewbytes/shardtail/interface"
)

// RawDecoder emits the record payload unchanged as a single event.
type RawDecoder struct{}

func (RawDecoder) Decode(data []byte) ([][]byte, error) {
	return [][]byte{data}, nil
}

// NewlineDecoder splits a record payload into one event per line, the
// common way producers pack multiple log lines into a single record. Blank
// lines decode to nothing, so a record can yield zero events.
type NewlineDecoder struct{}

func (NewlineDecoder) Decode(data []byte) ([][]byte, error) {
	var out [][]byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// DecoderFor maps a configuration name to a decoder.
func DecoderFor(name string) (si.Decoder, error) {
	switch name {
	case "", "raw":
		return RawDecoder{}, nil
	case "lines":
		return NewlineDecoder{}, nil
	}
	return nil, si.Fatal("unknown decoder "+name, nil)
}
