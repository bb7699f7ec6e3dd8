package meshio

// lzfDecompress expands LZF data (as written by PCL's binary_compressed PCD) into exactly
// outLen bytes.
func lzfDecompress(in []byte, outLen int) ([]byte, error) {
	out := make([]byte, 0, capHint(outLen))
	ip := 0
	for ip < len(in) {
		ctrl := int(in[ip])
		ip++
		if ctrl < 1<<5 {
			n := ctrl + 1
			if ip+n > len(in) {
				return nil, malformed("lzf: literal run past end of input")
			}
			if len(out)+n > outLen {
				return nil, malformed("lzf: output overflow")
			}
			out = append(out, in[ip:ip+n]...)
			ip += n
			continue
		}
		n := ctrl >> 5
		if n == 7 {
			if ip >= len(in) {
				return nil, malformed("lzf: truncated length")
			}
			n += int(in[ip])
			ip++
		}
		if ip >= len(in) {
			return nil, malformed("lzf: truncated back reference")
		}
		ref := len(out) - ((ctrl & 0x1f) << 8) - 1 - int(in[ip])
		ip++
		n += 2
		if ref < 0 {
			return nil, malformed("lzf: back reference before start")
		}
		if len(out)+n > outLen {
			return nil, malformed("lzf: output overflow")
		}
		// byte by byte: source and destination may overlap
		for k := 0; k < n; k++ {
			out = append(out, out[ref+k])
		}
	}
	if len(out) != outLen {
		return nil, malformed("lzf: got %d bytes, want %d", len(out), outLen)
	}
	return out, nil
}
