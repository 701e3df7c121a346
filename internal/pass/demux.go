package pass

import "encoding/binary"

// EndianSwap byte-swaps every 16-bit element of payload in place. payload
// must have an even length. Applying EndianSwap twice is the identity.
func EndianSwap(payload []byte) {
	for i := 0; i+1 < len(payload); i += 2 {
		payload[i], payload[i+1] = payload[i+1], payload[i]
	}
}

// Demux extracts the R samples belonging to (sensor, channel) from payload,
// striding by sensorCount*channelCount starting at sensor*channelCount+channel,
// applying the linear calibration gradient*x+offset, and writes the result
// into dst. dst.Count is set to the number of samples extracted and
// dst.SequenceID to sequenceID. Fails with NoMemory if dst cannot hold
// sampleRate values.
//
// Samples are interpreted as little-endian signed 16-bit integers; callers
// that receive big-endian payloads must call EndianSwap first.
func Demux(dst *SampleArray, payload []byte, sensorCount, channelCount, sampleRate, sensor, channel int, gradient, offset float64, sequenceID uint32) error {
	if err := dst.RequireCapacity("demux", sampleRate); err != nil {
		return err
	}

	stride := sensorCount * channelCount
	start := sensor*channelCount + channel

	i := 0
	for t := 0; t < sampleRate; t++ {
		idx := t*stride + start
		raw := int16(binary.LittleEndian.Uint16(payload[idx*2 : idx*2+2]))
		dst.Values[i] = float64(raw)*gradient + offset
		i++
	}
	dst.Count = i
	dst.SequenceID = sequenceID
	dst.zeroTail()
	return nil
}
