package validate

import "example.com/tapgate/internal/codec"
import "example.com/tapgate/internal/rap"

// pathBuilder turns an ordered list of structural type names into the
// ErrorContext slice that locates a violation inside the rejected TAP tree.
// ItemLevel is assigned 1-based, in the order names are given, so the
// caller's argument order IS the path from the TransferBatch root down to
// the offending element.
type pathBuilder struct {
	dict *codec.TagDictionary
}

func newPathBuilder(dict *codec.TagDictionary) *pathBuilder {
	return &pathBuilder{dict: dict}
}

func (b *pathBuilder) build(names ...string) ([]rap.ErrorContext, error) {
	ctx := make([]rap.ErrorContext, 0, len(names))
	for i, name := range names {
		id, err := b.dict.PathItemID(name)
		if err != nil {
			return nil, err
		}
		ctx = append(ctx, rap.ErrorContext{PathItemID: id, ItemLevel: i + 1})
	}
	return ctx, nil
}
