package codec

import "github.com/Marohn-Group/mrfmsim-yaml/model"

// BlockList marks a sequence for block layout, one item per line. Plain
// sequences emit in flow style; edge lists are wrapped in a BlockList so the
// graph structure stays readable.
type BlockList []any

// NodeList marks an ordered node collection for representation as a !nodes
// mapping of name to properties.
type NodeList []*model.Node
