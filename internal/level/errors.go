package level

import "errors"

var (
	// ErrSectorOverlap сектор пересекается с уже существующим соседом
	ErrSectorOverlap = errors.New("sector overlaps sibling")
	// ErrInvalidSector некорректный размер сектора
	ErrInvalidSector = errors.New("invalid sector")
	// ErrUnknownSector сектор отсутствует в дереве
	ErrUnknownSector = errors.New("unknown sector")
)
