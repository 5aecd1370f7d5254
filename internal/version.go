package internal

// Version is the kanacards release
const Version = "0.4.2"
