package pdf

// Money expone el formateo de importes para las pruebas.
var Money = money
