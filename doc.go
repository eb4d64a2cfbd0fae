/*
Package bson implements a codec for BSON (Binary JSON), the length-prefixed
binary document format used as MongoDB's wire representation.

 BSON Specification

 Basic Types:
 The following basic types are used as terminals in the rest of the grammar.
 Each type must be serialized in little-endian format.

 byte    1 byte  (8-bits)
 int32   4 bytes (32-bit signed integer)
 int64   8 bytes (64-bit signed integer)
 double  8 bytes (64-bit IEEE 754 floating point)

 Non-terminals:
 document ::= int32 e_list "\x00"            BSON Document
 e_list   ::= element e_list                 Sequence of elements
            | ""
 element  ::= "\x01" e_name double           Floating point
            | "\x02" e_name string           UTF-8 string
            | "\x03" e_name document         Embedded document
            | "\x04" e_name document         Array
            | "\x05" e_name binary           Binary data
            | "\x06" e_name                  Undefined — decoded as Null
            | "\x07" e_name (byte*12)        ObjectId
            | "\x08" e_name "\x00"           Boolean "false"
            | "\x08" e_name "\x01"           Boolean "true"
            | "\x09" e_name int64            UTC datetime
            | "\x0A" e_name                  Null value
            | "\x0B" e_name cstring cstring  Regular expression
            | "\x0C" e_name string (byte*12) DBPointer — decoded as DBRef
            | "\x0D" e_name string           JavaScript code
            | "\x0E" e_name string           Symbol — decoded as String
            | "\x0F" e_name code_w_s         JavaScript code w/ scope
            | "\x10" e_name int32            32-bit Integer
            | "\x11" e_name uint32 uint32    Timestamp (increment, seconds)
            | "\x12" e_name int64            64-bit integer
            | "\xFF" e_name                  Min key
            | "\x7F" e_name                  Max key
 e_name   ::= cstring                        Key name
 string   ::= int32 (byte*) "\x00"           String, length includes NUL
 cstring  ::= (byte*) "\x00"                 CString, no interior NUL
 binary   ::= int32 subtype (byte*)          Binary
 subtype  ::= "\x00"                         Generic
            | "\x02"                         Binary (old, redundant length)
            | "\x03" | "\x04"                UUID (legacy / standard)
            | other                          Delivered as Binary{Subtype}
 code_w_s ::= int32 string document          Code w/ scope

 Document-level rewrite:
 A decoded document whose keys include "$ref" (a string) and "$id"
 (optionally "$db") is rewritten into a DBRef value; the remaining keys
 become DBRef.Extra.
 This happens after the document is fully decoded, not at element-dispatch
 time, since the trigger is key shape rather than a type tag.

 Key ordering:
 A Document preserves insertion order on both decode and encode. The one
 exception is "_id" at the top level of Encode: if present it is always
 emitted first, regardless of where it appears in the Document's order.
 Nested documents never get this treatment.

 UUID sub-encodings (Binary subtypes 3/4):
 Three historically divergent byte orderings exist for the same logical
 128-bit UUID, selected via DecodeOptions.UUIDSubtype / EncodeOptions.UUIDSubtype:
   - Standard:      big-endian, straightforward uuid.UUID bytes.
   - JavaLegacy:     the two 8-byte halves of the UUID are each byte-reversed.
   - CSharpLegacy:   little-endian (Microsoft GUID) byte layout.
 Round-tripping a UUID is only guaranteed when the same sub-encoding is used
 for both Encode and Decode; mixing modes is a documented lossy scenario.

 Regex compilation:
 DecodeOptions.CompileRegex (default true) asks the decoder to additionally
 try compiling a BSON regex into a Go *regexp.Regexp using the nearest
 equivalent inline flags. This is a convenience of the decode call, not a
 property of the value model: a pattern or flag combination Go's regexp
 engine can't express (for example "l" locale-dependent matching, "x"
 free-spacing, or syntax regexp/syntax rejects) degrades to the raw
 Regexp value instead of failing the whole document.

 Error taxonomy:
   InvalidBSONError        structural decode failure (truncation, bad
                           length, missing trailing NUL, unknown tag,
                           bad UTF-8).
   InvalidDocumentError    encode-time policy violation (non-string key,
                           forbidden leading '$' or any '.', NUL inside
                           a key/pattern).
   InvalidStringDataError  encode-time key or string that is not valid
                           UTF-8.
   OverflowError           integer outside the signed 64-bit range.
   TypeError               encoder given an unsupported value.

 Native accelerator:
 HasNative reports whether a faster non-portable decode path has been
 linked in at init time (see native.go). This build ships only the
 portable Go path.
*/
package bson
