// Package mmap maps point files read-only into memory.
//
// Point and centroid files are parsed front to back, so LocalStore maps them
// and advises the kernel of sequential access. ReadAt copies out of the
// mapping; Bytes exposes it directly until Close.
//
// Unix uses mmap(2) and madvise(2). Windows uses CreateFileMapping and
// MapViewOfFile; Advise is a no-op there.
package mmap
