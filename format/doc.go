// Package format defines the type tags and enumerations shared by bytecol packages.
//
// A Type identifies a column kind ("String", "FixedString(N)", "UInt64",
// "Array(T)") so that generic code can dispatch on it and so that serialized
// blocks can record which column implementation reads each body back.
package format
