// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package binary implements the memcached binary protocol: a fixed
// 24-byte big-endian header framing an extras/key/value body.
package binary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

const headerSize = 24

var errShortBody = errors.New("total body length shorter than extras + key")

// RequestHeader is the fixed request framing.
//
//	magic(1) opcode(1) keylen(2) extraslen(1) datatype(1) vbucket(2)
//	totalbody(4) opaque(4) cas(8)
type RequestHeader struct {
	Magic           uint8
	Opcode          uint8
	KeyLength       uint16
	ExtrasLength    uint8
	DataType        uint8
	Reserved        uint16 // vbucket id; the same bits carry the status on responses
	TotalBodyLength uint32
	Opaque          uint32
	CAS             uint64
}

// Request is one framed client message.
type Request struct {
	Header RequestHeader
	Extras []byte
	Key    []byte
	Value  []byte
}

// ResponseHeader is the fixed response framing.
type ResponseHeader struct {
	Magic           uint8
	Opcode          uint8
	KeyLength       uint16
	ExtrasLength    uint8
	DataType        uint8
	Status          uint16
	TotalBodyLength uint32
	Opaque          uint32
	CAS             uint64
}

// Response is one framed server message.
type Response struct {
	Header ResponseHeader
	Extras []byte
	Key    []byte
	Value  []byte
}

// ReadRequest reads exactly one request: the 24-byte header, then the
// extras, key and value chunks. The value length is derived as
// total - extras - key; a derivation that underflows is malformed and
// poisons the whole stream, so it comes back as an error.
func ReadRequest(r io.Reader) (Request, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Request{}, err
	}
	h := RequestHeader{
		Magic:           hdr[0],
		Opcode:          hdr[1],
		KeyLength:       binary.BigEndian.Uint16(hdr[2:4]),
		ExtrasLength:    hdr[4],
		DataType:        hdr[5],
		Reserved:        binary.BigEndian.Uint16(hdr[6:8]),
		TotalBodyLength: binary.BigEndian.Uint32(hdr[8:12]),
		Opaque:          binary.BigEndian.Uint32(hdr[12:16]),
		CAS:             binary.BigEndian.Uint64(hdr[16:24]),
	}
	if uint64(h.ExtrasLength)+uint64(h.KeyLength) > uint64(h.TotalBodyLength) {
		return Request{}, errShortBody
	}
	req := Request{Header: h}
	var err error
	if req.Extras, err = readChunk(r, int(h.ExtrasLength)); err != nil {
		return Request{}, err
	}
	if req.Key, err = readChunk(r, int(h.KeyLength)); err != nil {
		return Request{}, err
	}
	valueLen := int(h.TotalBodyLength) - int(h.ExtrasLength) - int(h.KeyLength)
	if req.Value, err = readChunk(r, valueLen); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ReadResponse reads exactly one response, deriving the value length the
// same way as ReadRequest. It exists for clients, including the tests.
func ReadResponse(r io.Reader) (Response, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Response{}, err
	}
	h := ResponseHeader{
		Magic:           hdr[0],
		Opcode:          hdr[1],
		KeyLength:       binary.BigEndian.Uint16(hdr[2:4]),
		ExtrasLength:    hdr[4],
		DataType:        hdr[5],
		Status:          binary.BigEndian.Uint16(hdr[6:8]),
		TotalBodyLength: binary.BigEndian.Uint32(hdr[8:12]),
		Opaque:          binary.BigEndian.Uint32(hdr[12:16]),
		CAS:             binary.BigEndian.Uint64(hdr[16:24]),
	}
	if uint64(h.ExtrasLength)+uint64(h.KeyLength) > uint64(h.TotalBodyLength) {
		return Response{}, errShortBody
	}
	resp := Response{Header: h}
	var err error
	if resp.Extras, err = readChunk(r, int(h.ExtrasLength)); err != nil {
		return Response{}, err
	}
	if resp.Key, err = readChunk(r, int(h.KeyLength)); err != nil {
		return Response{}, err
	}
	valueLen := int(h.TotalBodyLength) - int(h.ExtrasLength) - int(h.KeyLength)
	if resp.Value, err = readChunk(r, valueLen); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func readChunk(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteRequest emits the header verbatim, then extras, key and value,
// and flushes. The caller is responsible for consistent lengths.
func WriteRequest(w *bufio.Writer, req *Request) error {
	var hdr [headerSize]byte
	h := &req.Header
	hdr[0] = h.Magic
	hdr[1] = h.Opcode
	binary.BigEndian.PutUint16(hdr[2:4], h.KeyLength)
	hdr[4] = h.ExtrasLength
	hdr[5] = h.DataType
	binary.BigEndian.PutUint16(hdr[6:8], h.Reserved)
	binary.BigEndian.PutUint32(hdr[8:12], h.TotalBodyLength)
	binary.BigEndian.PutUint32(hdr[12:16], h.Opaque)
	binary.BigEndian.PutUint64(hdr[16:24], h.CAS)
	return writeBody(w, hdr, req.Extras, req.Key, req.Value)
}

// WriteResponse emits the header, extras, key and value, and flushes.
func WriteResponse(w *bufio.Writer, resp *Response) error {
	var hdr [headerSize]byte
	h := &resp.Header
	hdr[0] = h.Magic
	hdr[1] = h.Opcode
	binary.BigEndian.PutUint16(hdr[2:4], h.KeyLength)
	hdr[4] = h.ExtrasLength
	hdr[5] = h.DataType
	binary.BigEndian.PutUint16(hdr[6:8], h.Status)
	binary.BigEndian.PutUint32(hdr[8:12], h.TotalBodyLength)
	binary.BigEndian.PutUint32(hdr[12:16], h.Opaque)
	binary.BigEndian.PutUint64(hdr[16:24], h.CAS)
	return writeBody(w, hdr, resp.Extras, resp.Key, resp.Value)
}

func writeBody(w *bufio.Writer, hdr [headerSize]byte, chunks ...[]byte) error {
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return err
		}
	}
	return w.Flush()
}

// MakeResponse builds a success response to req, echoing its opaque and
// cas tokens. The key is included only for the K-variant get opcodes.
func MakeResponse(req *Request, extras []byte, includeKey bool, value []byte) *Response {
	var key []byte
	if includeKey {
		key = req.Key
	}
	return &Response{
		Header: ResponseHeader{
			Magic:           ResponseMagic,
			Opcode:          req.Header.Opcode,
			KeyLength:       uint16(len(key)),
			ExtrasLength:    uint8(len(extras)),
			DataType:        RawBytes,
			Status:          StatusNoError,
			TotalBodyLength: uint32(len(extras) + len(key) + len(value)),
			Opaque:          req.Header.Opaque,
			CAS:             req.Header.CAS,
		},
		Extras: extras,
		Key:    key,
		Value:  value,
	}
}

// MakeError builds an empty-body response carrying a status code.
func MakeError(req *Request, status uint16) *Response {
	return &Response{
		Header: ResponseHeader{
			Magic:    ResponseMagic,
			Opcode:   req.Header.Opcode,
			DataType: RawBytes,
			Status:   status,
			Opaque:   req.Header.Opaque,
			CAS:      req.Header.CAS,
		},
	}
}
