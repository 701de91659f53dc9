// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	stringRecordPrefix = "strrec:"
	stringHashPrefix   = "strhash:"
	stringRecordSeq    = "strseq"
	metaHashAlgorithm  = "meta:hash"
)

// makeRecordKey generates the primary key for a record.
// Format: prefix + big-endian sequence, so key order is insertion order.
func makeRecordKey(seq uint64) []byte {
	buf := make([]byte, len(stringRecordPrefix)+8)
	offset := copy(buf, stringRecordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeHashKey generates the index key mapping a content hash to its sequence.
// Format: prefix:hash
func makeHashKey(id string) []byte {
	buf := make([]byte, len(stringHashPrefix)+len(id))
	offset := copy(buf, stringHashPrefix)
	copy(buf[offset:], id)
	return buf
}
