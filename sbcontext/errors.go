package sbcontext

import "errors"

var (
	// ErrLayerFactoryAbsent names the condition of a Context with no
	// attached layer factory. GetLayer does not return it: a Context
	// with no attached factory creates layers with DefaultFactory.
	ErrLayerFactoryAbsent = errors.New("sbcontext: no layer factory attached")
	// ErrLayerFactoryReturnedNull is a fatal programming error: the
	// attached factory returned a nil layer.
	ErrLayerFactoryReturnedNull = errors.New("sbcontext: layer factory returned nil")
)
