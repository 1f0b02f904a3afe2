package types

// StringPtr 返回字符串指针，便于构造用户配置
func StringPtr(s string) *string { return &s }

// IntPtr 返回 int 指针
func IntPtr(i int) *int { return &i }

// BoolPtr 返回 bool 指针
func BoolPtr(b bool) *bool { return &b }

// Uint8Ptr 返回 uint8 指针
func Uint8Ptr(u uint8) *uint8 { return &u }
