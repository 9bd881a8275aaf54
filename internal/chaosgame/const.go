package chaosgame

const (
	Gamma               = 2.2
	HistoryDepth        = 4 // anchor indices remembered by the worker, newest first
	SeedSize            = 32
	PreviewDivisor      = 10 // first batch after (re)spawn is Steps/PreviewDivisor
	DefaultWidth        = 1024
	DefaultHeight       = 1024
	DefaultZoom         = 1.25
	DefaultGain         = 0.1
	DefaultSteps        = 500_000
	DefaultScatterSteps = 7
	DefaultBurninSteps  = 1_000
	DefaultPolygon      = 3
	QueuePerThread      = 2 // default results queue length is QueuePerThread*threads
	OutputPNG           = "output.png"
	GIFDelay            = 10 // 100ths of a second between timelapse frames
	// background, already in squared-linear space
	BackgroundR = 0.001
	BackgroundG = 0.001
	BackgroundB = 0.001
	// Rec. 709 luma weights used for the lightness variance estimate
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)
