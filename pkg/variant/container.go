package variant

// objectField is one (key, child position) pair of an object, in the
// order it is stored in the buffer.
type objectField struct {
	key string
	pos int
}

// keyResolver maps a field id to its dictionary key.
type keyResolver interface {
	key(id uint64) (string, error)
}

// containerLayout is the parsed header region shared by objects and arrays.
type containerLayout struct {
	count       int
	idStart     int
	idWidth     int
	offsetStart int
	offsetWidth int
	dataStart   int
	dataSize    int
}

// parseLayout reads the element count at pos+1 and lays out the id table
// (idWidth 0 for arrays), the offset table and the data region. The count
// is checked against the bytes left before anything proportional to it is
// computed or allocated.
func parseLayout(buf []byte, pos, sizeBytes, idWidth, offsetWidth int) (containerLayout, error) {
	count, err := readUint(buf, pos+1, sizeBytes)
	if err != nil {
		return containerLayout{}, err
	}
	idStart := pos + 1 + sizeBytes
	remaining := uint64(0)
	if idStart < len(buf) {
		remaining = uint64(len(buf) - idStart)
	}
	if count*uint64(idWidth+offsetWidth)+uint64(offsetWidth) > remaining {
		return containerLayout{}, malformed(pos+1, ReasonSizeExceedsBuffer, "%d entries do not fit in %d bytes", count, remaining)
	}
	n := int(count)
	l := containerLayout{
		count:       n,
		idStart:     idStart,
		idWidth:     idWidth,
		offsetStart: idStart + n*idWidth,
		offsetWidth: offsetWidth,
	}
	l.dataStart = l.offsetStart + (n+1)*offsetWidth
	lastPos := l.offsetStart + n*offsetWidth
	total, err := readUint(buf, lastPos, offsetWidth)
	if err != nil {
		return containerLayout{}, err
	}
	if total > uint64(len(buf)-l.dataStart) {
		return containerLayout{}, malformed(lastPos, ReasonSizeExceedsBuffer, "data size %d exceeds buffer", total)
	}
	l.dataSize = int(total)
	return l, nil
}

// childPos returns the absolute position of entry i.
func (l containerLayout) childPos(buf []byte, i int) (int, error) {
	at := l.offsetStart + i*l.offsetWidth
	offset, err := readUint(buf, at, l.offsetWidth)
	if err != nil {
		return 0, err
	}
	if offset >= uint64(l.dataSize) {
		return 0, malformed(at, ReasonOutOfBounds, "entry %d offset %d outside data of %d bytes", i, offset, l.dataSize)
	}
	return l.dataStart + int(offset), nil
}

// decodeObject parses the object at pos. Fields come back in stored order;
// no sorting or duplicate check is applied.
func decodeObject(buf []byte, pos int, keys keyResolver) ([]objectField, error) {
	bt, ti, err := typeInfoAt(buf, pos)
	if err != nil {
		return nil, err
	}
	if bt != BasicObject {
		return nil, malformed(pos, ReasonBasicTypeMismatch, "expected %s, found %s", BasicObject, bt)
	}
	sizeBytes := 1
	if (ti>>4)&0x1 != 0 {
		sizeBytes = u32Size
	}
	idWidth := int((ti>>2)&0x3) + 1
	offsetWidth := int(ti&0x3) + 1
	l, err := parseLayout(buf, pos, sizeBytes, idWidth, offsetWidth)
	if err != nil {
		return nil, err
	}
	fields := make([]objectField, 0, l.count)
	for i := 0; i < l.count; i++ {
		id, err := readUint(buf, l.idStart+i*idWidth, idWidth)
		if err != nil {
			return nil, err
		}
		child, err := l.childPos(buf, i)
		if err != nil {
			return nil, err
		}
		key, err := keys.key(id)
		if err != nil {
			return nil, err
		}
		fields = append(fields, objectField{key: key, pos: child})
	}
	return fields, nil
}

// decodeArray parses the array at pos and returns element positions in order.
func decodeArray(buf []byte, pos int) ([]int, error) {
	bt, ti, err := typeInfoAt(buf, pos)
	if err != nil {
		return nil, err
	}
	if bt != BasicArray {
		return nil, malformed(pos, ReasonBasicTypeMismatch, "expected %s, found %s", BasicArray, bt)
	}
	sizeBytes := 1
	if (ti>>2)&0x1 != 0 {
		sizeBytes = u32Size
	}
	offsetWidth := int(ti&0x3) + 1
	l, err := parseLayout(buf, pos, sizeBytes, 0, offsetWidth)
	if err != nil {
		return nil, err
	}
	elems := make([]int, 0, l.count)
	for i := 0; i < l.count; i++ {
		child, err := l.childPos(buf, i)
		if err != nil {
			return nil, err
		}
		elems = append(elems, child)
	}
	return elems, nil
}
