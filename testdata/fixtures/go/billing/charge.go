package billing

// Charge bills a customer.
//
// arch:group shop
// arch:tags payments,external
// arch:uses "Payment Gateway" "calls" https
func Charge() {}
