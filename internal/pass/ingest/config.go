package ingest

// Config describes one acquisition stream's geometry and calibration,
// analogous to server.Config's applyDefaults pattern.
type Config struct {
	Host string
	Port int

	SensorCount  int
	ChannelCount int
	SampleRate   int
	HasHeader    bool
	SwapEndian   bool

	Gradient float64
	Offset   float64
}

// applyDefaults fills zero values with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.SensorCount == 0 {
		c.SensorCount = 1
	}
	if c.ChannelCount == 0 {
		c.ChannelCount = 1
	}
	if c.SampleRate == 0 {
		c.SampleRate = 8000
	}
	if c.Gradient == 0 {
		c.Gradient = 1
	}
}
