package algorithm

// Primes returns every prime p with 2 <= p <= limit in increasing order.
// A limit below 2 yields an empty list.
func Primes(limit int) PrimeOutcome {
	primes := make([]int, 0)
	for candidate := 2; candidate <= limit && candidate > 0; candidate++ {
		if IsPrime(candidate) {
			primes = append(primes, candidate)
		}
	}
	return PrimeOutcome{Limit: limit, Primes: primes}
}

// IsPrime reports whether n is prime using 6k±1 trial division.
func IsPrime(n int) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	// i <= n/i is i*i <= n without overflowing near the top of the int range.
	for i := 5; i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}
