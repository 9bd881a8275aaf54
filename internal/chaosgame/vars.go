package chaosgame

import "errors"

var (
	ErrInvalidParam = errors.New("invalid parameter")
	ErrEmptyShape   = errors.New("shape must contain at least one point")
	ErrDisconnected = errors.New("result channel disconnected")
	ErrStopped      = errors.New("world is stopped")
	ErrRunning      = errors.New("world is still running")
	// Compile time checks that every rule and choice implements its interface
	_ Rule   = (*DefaultRule)(nil)
	_ Rule   = (*DarkenRule)(nil)
	_ Rule   = (*SpiralRule)(nil)
	_ Rule   = (*DiscreteSpiralRule)(nil)
	_ Rule   = (*OrRule)(nil)
	_ Rule   = (*TensorRule)(nil)
	_ Rule   = (*TensoredRule)(nil)
	_ Rule   = (*RandAdvanceRule)(nil)
	_ Rule   = (*AdvanceTwoRule)(nil)
	_ Rule   = (*MergeRule)(nil)
	_ Rule   = (*AffineAdvanceRule)(nil)
	_ Choice = (*DefaultChoice)(nil)
	_ Choice = (*AvoidChoice)(nil)
	_ Choice = (*AvoidTwoChoice)(nil)
	_ Choice = (*NeighborChoice)(nil)
	_ Choice = (*NeighborhoodChoice)(nil)
	_ Choice = (*MatrixChoice)(nil)
	_ Choice = (*TensorChoice)(nil)
)
