package sotest_go

// Status receives every message the driver prints about itself; script
// output from called symbols goes straight to the inherited descriptors.
type Status interface {
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
